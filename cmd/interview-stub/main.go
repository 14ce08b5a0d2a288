// Command interview-stub runs the in-memory stub of the interview service, so that the
// contract tests can be run locally without the real backend.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/acat-interview/interview-contract-tests/config"
	"github.com/acat-interview/interview-contract-tests/servicedef"
	"github.com/acat-interview/interview-contract-tests/stubservice"

	"github.com/gin-gonic/gin"
)

const defaultPort = 9090

func main() {
	var port int
	var configFile string
	var envFile string
	var quiet bool
	var redirect bool

	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.IntVar(&port, "port", defaultPort, "port to listen on")
	fs.StringVar(&configFile, "config", "", "YAML configuration file (fixtures and endpoint paths)")
	fs.StringVar(&envFile, "env-file", "", "dotenv file to load before reading the environment")
	fs.BoolVar(&quiet, "quiet", false, "disable the access log")
	fs.BoolVar(&redirect, "redirect", false, "redirect unauthenticated calls to the login page instead of serving it")
	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid parameters: %s\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(config.LoadOptions{FilePath: configFile, EnvFile: envFile})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	endpoints := make(map[servicedef.EndpointName]string, len(servicedef.AllEndpoints))
	for _, name := range servicedef.AllEndpoints {
		endpoints[name] = cfg.Endpoint(name)
	}

	gin.SetMode(gin.ReleaseMode)
	opts := stubservice.Options{
		Fixtures:                cfg.Fixtures(),
		Endpoints:               endpoints,
		LogOutput:               os.Stdout,
		RedirectUnauthenticated: redirect,
	}
	if quiet {
		opts.LogOutput = nil
	}
	service, err := stubservice.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not start stub service: %s\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", port)
	log.Printf("Interview stub service listening on %s", addr)
	if err := http.ListenAndServe(addr, service); err != nil {
		log.Fatal(err)
	}
}
