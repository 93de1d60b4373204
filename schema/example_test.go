package schema_test

import (
	"context"
	"fmt"
	"os"

	"github.com/jonwraymond/envops/env"
	"github.com/jonwraymond/envops/schema"
	"github.com/jonwraymond/envops/transform"
)

func ExampleVerify() {
	os.Setenv("DB_NAME", "orders")
	defer os.Unsetenv("DB_NAME")

	result := schema.Verify(schema.Map{
		"db": schema.Map{
			"name": schema.Key("DB_NAME"),
		},
	})

	db := result.Config["db"].(map[string]any)
	fmt.Println(result.OK(), db["name"])
	// Output: true orders
}

func ExampleVerifier_Verify() {
	v := schema.NewVerifier(schema.WithEnvironment(env.Map{}))

	result := v.Verify(context.Background(), schema.Map{
		"base": schema.Map{
			"url": schema.Key("BASE_URL"),
		},
	})

	fmt.Println(result.OK())
	for _, msg := range result.Errors {
		fmt.Println(msg)
	}
	// Output:
	// false
	// environment value BASE_URL is missing from config object at base.url
}

func ExampleVerifier_Strict() {
	v := schema.NewVerifier(schema.WithEnvironment(env.Map{}))

	_, err := v.Strict(context.Background(), schema.Map{
		"base": schema.Map{
			"url": schema.Key("BASE_URL"),
		},
	})

	fmt.Println(err)
	// Output: Missing configuration values: environment value BASE_URL is missing from config object at base.url
}

func ExampleTransform() {
	v := schema.NewVerifier(schema.WithEnvironment(env.Map{"PORT": "8080"}))

	result := v.Verify(context.Background(), schema.Map{
		"port": schema.Transform("PORT", transform.Int),
	})

	port := result.Config["port"].(int)
	fmt.Println(port + 1)
	// Output: 8081
}

func ExampleInsert() {
	v := schema.NewVerifier(schema.WithEnvironment(env.Map{}))

	result := v.Verify(context.Background(), schema.Map{
		"flags": schema.Map{
			"beta": schema.Insert(true),
		},
	})

	flags := result.Config["flags"].(map[string]any)
	fmt.Println(flags["beta"])
	// Output: true
}

func ExampleSecret() {
	v := schema.NewVerifier(schema.WithEnvironment(env.Map{
		"DB_PASSWORD": "hunter2",
	}))

	result := v.Verify(context.Background(), schema.Map{
		"db": schema.Map{
			"password": schema.Secret(schema.Key("DB_PASSWORD")),
		},
	})

	fmt.Println(result.SecretPaths())
	// Output: [db.password]
}

func ExampleResult_Redacted() {
	v := schema.NewVerifier(schema.WithEnvironment(env.Map{
		"DB_NAME":     "orders",
		"DB_PASSWORD": "hunter2",
	}))

	result := v.Verify(context.Background(), schema.Map{
		"db": schema.Map{
			"name":     schema.Key("DB_NAME"),
			"password": schema.Secret(schema.Key("DB_PASSWORD")),
		},
	})

	view, _ := result.Redacted()
	fmt.Println(view)
	// Output:
	// {
	//   "db": {
	//     "name": "orders",
	//     "password": "[secret]"
	//   }
	// }
}
