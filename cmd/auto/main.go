package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	_ "lintang/postmanx/docs"
	"lintang/postmanx/pkg/kv"
	"lintang/postmanx/pkg/osmparser"
	"lintang/postmanx/pkg/selection"
	"lintang/postmanx/pkg/server/rest"
	"lintang/postmanx/pkg/server/rest/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "net/http/pprof"

	"github.com/cockroachdb/pebble"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

var (
	listenAddr = flag.String("listenaddr", ":5000", "server listen address")
	mapFile    = flag.String("f", "solo_jogja.osm.pbf", "openstreetmap file for the road network graph")
	dbPath     = flag.String("db", "postmanxDB", "pebble db directory")
)

//	@title			postmanx lintangbs API
//	@version		1.0
//	@description	openstreetmap route inspection (chinese postman) engine in go

//	@contact.name	lintang birda saputra
//	@description 	openstreetmap route inspection engine in go. Computes closed routes that cover every road inside a polygon at least once

//	@license.name	GNU Affero General Public License v3.0
//	@license.url	https://www.gnu.org/licenses/gpl-3.0.en.html

// @host		localhost:5000
// @BasePath	/api
// @schemes	http
func main() {
	flag.Parse()

	tiles, candidateCells, err := osmparser.ParsePBF(*mapFile)
	if err != nil {
		log.Fatal(err)
	}

	db, err := pebble.Open(*dbPath, &pebble.Options{})
	if err != nil {
		log.Fatal(err)
	}

	kvDB := kv.NewKVDB(db)
	defer kvDB.Close()

	kvDB.SaveTiles(tiles)
	kvDB.SaveCandidates(candidateCells)

	selector, err := selection.NewSelector(kvDB)
	if err != nil {
		log.Fatal(err)
	}
	snapper := selection.NewSnapper(kvDB)

	reg := prometheus.NewRegistry()
	m := rest.NewMetrics(reg)

	r := chi.NewRouter()

	r.Use(middleware.Logger)

	r.Use(rest.PromeHttpMiddleware(m)) // prometheus http middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Mount("/debug", middleware.Profiler())

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:5000/swagger/doc.json"),
	))

	postmanSvc := service.NewPostmanService(kvDB, snapper, selector)
	rest.PostmanRouter(r, postmanSvc, m)

	fmt.Printf("\nserver started at %s\n", *listenAddr)
	log.Fatal(http.ListenAndServe(*listenAddr, r))
}
