// Package schema declares environment configuration schemas and resolves
// them into nested configuration trees.
//
// A schema is a nested Map whose leaves name environment variables. Leaves
// come in four kinds: Key reads a variable verbatim, Transform reads and
// converts one, Insert carries a literal, and Secret marks any node for
// redaction. Resolution walks the whole schema and never stops early: every
// missing or invalid value is collected alongside the values that did
// resolve, so one verification pass reports everything wrong with an
// environment at once.
//
// # Declaring A Schema
//
//	s := schema.Map{
//	    "baseUrl": schema.Key("BASE_URL"),
//	    "port":    schema.Transform("PORT", transform.Int),
//	    "db": schema.Map{
//	        "name":     schema.Key("DB_NAME"),
//	        "password": schema.Secret(schema.Key("DB_PASSWORD")),
//	    },
//	}
//
// # Verifying
//
// Verify resolves the schema against the process environment and reports
// problems without failing:
//
//	result := schema.Verify(s)
//	for _, msg := range result.Errors {
//	    log.Println(msg)
//	}
//	if view, ok := result.Redacted(); ok {
//	    log.Println(view) // secrets replaced with "[secret]"
//	}
//
// StrictVerify fails instead, aggregating every message into one error:
//
//	cfg, err := schema.StrictVerify(s)
//
// A Verifier carries explicit dependencies (environment source, logging,
// tracing, metrics) for callers that do not want ambient process state:
//
//	v := schema.NewVerifier(schema.WithEnvironment(src))
//	result := v.Verify(ctx, s)
//
// # Paths
//
// Positions in the tree are addressed by dotted paths ("db.password").
// Paths are split and grouped on ".", so schema keys must not contain
// dots; a literal dotted key cannot be addressed for redaction.
package schema
