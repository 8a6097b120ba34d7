// Package tsp provides anytime metaheuristics for the symmetric Travelling
// Salesman Problem over a dense distance table.
//
// Two independent strategies share the same primitives:
//
//   - RunACS: Ant Colony System: pheromone-guided construction with the
//     pseudorandom-proportional rule, local and global pheromone updates,
//     and 2-opt on every iteration-best tour.
//
//   - RunILS: Iterated Local Search: double-bridge perturbation, 2-opt, and
//     simulated-annealing acceptance with a separately tracked best tour.
//
// Shared building blocks are exported for reuse and testing: NearestNeighbor,
// TourCost, TwoOpt, DoubleBridge, RouletteWheel and AcceptanceProbability.
//
// Both solvers run inside a budgeted outer loop (Budget) that measures each
// iteration with an injectable Clock and never interrupts a started iteration.
// Given the same Seed and the same iteration count, results are identical.
//
// Distances are read through the DistanceModel interface; *Instance is the
// concrete, validated, flat row-major implementation. Solvers never log;
// progress is surfaced through the Observer hooks.
package tsp
