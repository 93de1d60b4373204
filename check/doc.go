// Package check provides configuration readiness checks built on schema
// verification.
//
// This package turns schema resolution into a startup gate: a service can
// declare the schemas it depends on, check them against the environment
// before accepting traffic, and surface the outcome to whatever probe
// mechanism it already has.
//
// # Core Concepts
//
// A Checker is any component that can report configuration readiness. The
// Status type represents the readiness state: Ready or NotReady.
//
// # Basic Usage
//
//	// Create a checker for one schema
//	dbCheck := check.ForSchema("db", schema.Map{
//	    "host":     schema.Key("DB_HOST"),
//	    "password": schema.Secret(schema.Key("DB_PASSWORD")),
//	})
//
//	// Check readiness
//	result := dbCheck.Check(ctx)
//	if result.Status == check.StatusNotReady {
//	    log.Printf("Configuration incomplete: %s", result.Message)
//	}
//
// # Aggregating Checks
//
// Use Aggregator to combine multiple readiness checks into a single
// composite check:
//
//	agg := check.NewAggregator()
//	agg.Register("db", dbChecker)
//	agg.Register("api", apiChecker)
//	agg.Register("worker", workerChecker)
//
//	// Check all configuration surfaces
//	results := agg.CheckAll(ctx)
//	overall := agg.OverallStatus(results)
package check
