// Package metatsp solves the symmetric Travelling Salesman Problem with two
// anytime metaheuristics: Ant Colony System and Iterated Local Search.
//
// 🚀 What is inside?
//
//	• Solvers: ACS (pseudo-random-proportional rule, local and global
//	  pheromone updates) and ILS (double-bridge kick, 2-opt descent,
//	  simulated-annealing acceptance), sharing one anytime loop
//	• Building blocks: nearest-neighbour tours, roulette-wheel sampling,
//	  2-opt, tour evaluation and normalisation
//	• TSPLIB input: EUC_2D, CEIL_2D, ATT, GEO and EXPLICIT instances,
//	  plain or gzip/zstd compressed
//	• Benchmarks: parallel trials with reproducible per-trial seeds and
//	  best-known gap statistics
//	• Operations: slog logging, Prometheus metrics, SQLite run history
//
// Under the hood, everything is organized under these subpackages:
//
//	tsp/         distance models, solvers, anytime loop, observers
//	matrix/      dense row-major float64 storage and validators
//	tsplib/      TSPLIB parser and compressed file loader
//	bench/       multi-instance, multi-trial benchmark and summaries
//	config/      YAML run configuration
//	logging/     slog wrapper and progress observer
//	metrics/     Prometheus collector observer
//	store/       SQLite run history
//	cmd/metatsp  command-line front end: solve, bench, runs
//
// Quick start:
//
//	metatsp solve eil51.tsp --algo acs --time-limit 30s
//	metatsp bench data/*.tsp.gz --algo ils --trials 10 -p 4 --store runs.db
//
//	go install github.com/katalvlaran/metatsp/cmd/metatsp@latest
package metatsp
