// Package ybclient provides the primary entry point for constructing a
// YugabyteDB Managed API client that implements the ybapi.Client interface.
//
// It layers configuration, HTTP transport, authentication, and the response
// cache on top of the query and mutation primitives defined in the ybapi
// package.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//	  "time"
//
//	  "github.com/fivetwenty-io/ybcloud-client/pkg/ybapi"
//	  "github.com/fivetwenty-io/ybcloud-client/pkg/ybclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := ybclient.New(&ybapi.Config{
//	    APIEndpoint: "https://cloud.yugabyte.com/api",
//	    AccessToken: "eyJhbGciOi...",
//	    StaleTime:   30 * time.Second,
//	  })
//	  if err != nil { log.Fatal(err) }
//	  defer cli.Close()
//
//	  tasks, err := cli.Tasks().ListAll(ctx, &ybapi.ListTasksParams{AccountID: "acc1"})
//	  if err != nil { log.Fatal(err) }
//	  _ = tasks
//	}
//
// # Shared cache
//
// Setting Config.Cache to a NATS configuration stores fresh responses in a
// JetStream key-value bucket so several processes share them:
//
//	cli, err := ybclient.New(&ybapi.Config{
//	  APIEndpoint: "https://cloud.yugabyte.com/api",
//	  StaleTime:   time.Minute,
//	  Cache: &ybapi.CacheConfig{
//	    Type: ybapi.CacheTypeNATS,
//	    NATS: &ybapi.NATSKVConfig{URL: "nats://127.0.0.1:4222"},
//	  },
//	})
//
// # Helpers
//
// NewWithEndpoint and NewWithToken wrap New with the appropriate
// configuration.
package ybclient
