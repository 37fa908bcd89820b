// Package config provides configuration parsing for routeshell projects.
//
// The configuration is stored in routeshell.yaml at the project root. A .env
// file next to it and ROUTESHELL_* environment variables override individual
// values. The merged result is checked with struct validation.
//
// # Configuration File Structure
//
//	name: demo
//	routes:
//	  dir: app
//	  initial: /
//	  exclude: [__pycache__, __, __ignore__, testdata]
//	scripts:
//	  allowed_imports: [fmt, strings, strconv]
//	log:
//	  level: info
//	  format: text
//	surface:
//	  width: 100
//	  height: 30
//	inspector:
//	  addr: 127.0.0.1:7070
//	metrics:
//	  enabled: true
//	  namespace: routeshell
//	tracing:
//	  enabled: false
//	  endpoint: localhost:4317
//	  insecure: true
//	  sample_ratio: 1
//
// # Environment Overrides
//
//	ROUTESHELL_ROUTES_DIR        routes.dir
//	ROUTESHELL_ROUTES_EXCLUDE    routes.exclude (comma separated)
//	ROUTESHELL_INITIAL_PATH      routes.initial
//	ROUTESHELL_ALLOWED_IMPORTS   scripts.allowed_imports (comma separated)
//	ROUTESHELL_LOG_LEVEL         log.level
//	ROUTESHELL_LOG_FORMAT        log.format
//	ROUTESHELL_INSPECTOR_ADDR    inspector.addr
//	ROUTESHELL_METRICS           metrics.enabled
//	ROUTESHELL_METRICS_NAMESPACE metrics.namespace
//	ROUTESHELL_TRACING           tracing.enabled
//	ROUTESHELL_TRACING_ENDPOINT  tracing.endpoint
//	ROUTESHELL_SURFACE_WIDTH     surface.width
//	ROUTESHELL_SURFACE_HEIGHT    surface.height
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Routes:", cfg.RoutesPath())
package config
