package kv

import (
	"fmt"
	"log"
	"math"

	"lintang/postmanx/pkg/concurrent"

	"github.com/cockroachdb/pebble"
	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
	"github.com/uber/h3-go/v4"
)

const candidateCellRes = 9

type KVDB struct {
	db *pebble.DB
}

func NewKVDB(db *pebble.DB) *KVDB {
	return &KVDB{db}
}

func tileKey(level uint8, tileID uint32) []byte {
	return []byte(fmt.Sprintf("t/%d/%d", level, tileID))
}

func cellKey(cell h3.Cell) []byte {
	return []byte("c/" + cell.String())
}

// SaveTiles persists the tile set built by the parser.
func (k *KVDB) SaveTiles(tiles []*Tile) {
	bar := progressbar.NewOptions(len(tiles),
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription("[cyan][2/3][reset] saving graph tiles to pebble db..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	workers := concurrent.NewWorkerPool[concurrent.SaveTileJobItem, interface{}](4, len(tiles))

	for _, t := range tiles {
		val, err := CompressTile(*t)
		if err != nil {
			log.Fatal(err)
		}
		workers.AddJob(concurrent.SaveTileJobItem{Key: string(tileKey(t.Level, t.TileID)), Value: val})
		bar.Add(1)
	}
	workers.Close()

	workers.Start(k.saveItem)
	workers.Wait()
}

// SaveCandidates persists the h3-indexed snap candidates.
func (k *KVDB) SaveCandidates(cells map[h3.Cell][]CandidateRecord) {
	bar := progressbar.NewOptions(len(cells),
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription("[cyan][3/3][reset] saving h3 indexed snap candidates to pebble db..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	workers := concurrent.NewWorkerPool[concurrent.SaveTileJobItem, interface{}](4, len(cells))

	for cell, cands := range cells {
		val, err := CompressCandidates(cands)
		if err != nil {
			log.Fatal(err)
		}
		workers.AddJob(concurrent.SaveTileJobItem{Key: string(cellKey(cell)), Value: val})
		bar.Add(1)
	}
	workers.Close()

	workers.Start(k.saveItem)
	workers.Wait()
}

func (k *KVDB) saveItem(item concurrent.SaveTileJobItem) interface{} {
	if err := k.db.Set([]byte(item.Key), item.Value, pebble.Sync); err != nil {
		log.Fatal(err)
	}
	return nil
}

func (k *KVDB) GetTile(level uint8, tileID uint32) (Tile, error) {
	val, closer, err := k.db.Get(tileKey(level, tileID))
	if err != nil {
		return Tile{}, fmt.Errorf("tile %d/%d not found: %w", level, tileID, err)
	}
	defer closer.Close()
	return LoadTile(val)
}

// GetNearbyCandidates returns the snap candidates around a coordinate,
// widening the h3 search ring until something is found.
func (k *KVDB) GetNearbyCandidates(lat, lon float64) ([]CandidateRecord, error) {
	cands := []CandidateRecord{}

	home := h3.NewLatLng(lat, lon)
	cell := h3.LatLngToCell(home, candidateCellRes)
	val, closer, err := k.db.Get(cellKey(cell))
	if err == nil {
		homeCands, err := LoadCandidates(val)
		closer.Close()
		if err != nil {
			return []CandidateRecord{}, err
		}
		cands = append(cands, homeCands...)
	}

	// neighbor cells within a 0.7 km radius of the home cell
	cells := kRingIndexesArea(lat, lon, 0.7)
	for _, currCell := range cells {
		if currCell == cell {
			continue
		}
		val, closer, err := k.db.Get(cellKey(currCell))
		if closer == nil || err != nil {
			continue
		}
		more, err := LoadCandidates(val)
		if err != nil {
			closer.Close()
			return []CandidateRecord{}, err
		}
		cands = append(cands, more...)
		closer.Close()
	}

	// no roads within the radius (airport, forest, ...): widen the disk
	for lev := 1; lev <= 10; lev++ {
		if len(cands) != 0 {
			break
		}
		cells := h3.GridDisk(cell, lev)
		for _, currCell := range cells {
			if currCell == cell {
				continue
			}
			val, closer, err := k.db.Get(cellKey(currCell))
			if closer == nil || err != nil {
				continue
			}
			more, err := LoadCandidates(val)
			if err != nil {
				closer.Close()
				return []CandidateRecord{}, err
			}
			cands = append(cands, more...)
			closer.Close()
		}
	}

	if len(cands) == 0 {
		return []CandidateRecord{}, fmt.Errorf("no road near the location")
	}
	return cands, nil
}

// https://observablehq.com/@nrabinowitz/h3-radius-lookup?collection=@nrabinowitz/h3
// search the cell neighbors of lat,lon within searchRadiusKm
func kRingIndexesArea(lat, lon, searchRadiusKm float64) []h3.Cell {
	home := h3.NewLatLng(lat, lon)
	origin := h3.LatLngToCell(home, candidateCellRes)
	originArea := h3.CellAreaKm2(origin)
	searchArea := math.Pi * searchRadiusKm * searchRadiusKm

	radius := 0
	diskArea := originArea

	for diskArea < searchArea {
		radius++
		cellCount := float64(3*radius*(radius+1) + 1)
		diskArea = cellCount * originArea
	}

	return h3.GridDisk(origin, radius)
}

// IterTiles walks every stored tile. Iteration stops on the first
// error returned by fn.
func (k *KVDB) IterTiles(fn func(t Tile) error) error {
	iter, err := k.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte("t/"),
		UpperBound: []byte("t0"),
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		t, err := LoadTile(iter.Value())
		if err != nil {
			return err
		}
		if err := fn(t); err != nil {
			return err
		}
	}
	return iter.Error()
}

func (k *KVDB) Close() {
	k.db.Close()
}
