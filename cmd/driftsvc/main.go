package main

import (
	"flag"
	"net/http"

	"github.com/sarops/driftsim/internal/config"
	"github.com/sarops/driftsim/internal/envfield"
	"github.com/sarops/driftsim/internal/geodata"
	"github.com/sarops/driftsim/internal/monitoring"
)

func main() {
	addr := flag.String("addr", ":8090", "listen address")
	flag.Parse()

	env := envfield.NewDeterministic(
		envfield.Wind{SpeedKnots: 10, DirDeg: 270},
		envfield.Current{SpeedKnots: 1, DirDeg: 180},
		envfield.Waves{SignificantHeightM: 1, PeakPeriodS: 7, DirDeg: 270},
		65, 72, 10, 3,
	)
	geo := geodata.NewAdapter(
		geodata.NewSyntheticShoreline(29.30, -94.80, 0, 5, 0, geodata.ShoreSandy),
		10000,
	)
	tuning := config.MustLoadDefaultConfig()

	srv := NewServer(env, geo, tuning)

	monitoring.Logf("driftsvc listening on %s", *addr)
	if err := http.ListenAndServe(*addr, LoggingMiddleware(srv.ServeMux())); err != nil {
		monitoring.Logf("driftsvc exited: %v", err)
	}
}
