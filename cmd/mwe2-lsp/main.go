// SPDX-License-Identifier: Apache-2.0
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"github.com/tliron/glsp/server"

	"mwe2/internal/config"
	"mwe2/internal/lsp"
	"mwe2/internal/types"
	"mwe2/internal/workspace"
)

const lsName = "mwe2" // Name identifier for the language server

func main() {
	configFile := flag.String("config", "", "path to the configuration file")
	noWorkspace := flag.Bool("no-workspace", false, "do not index the search paths on startup")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Println("Error loading configuration:", err)
		os.Exit(1)
	}
	commonlog.Configure(cfg.Verbosity, nil)

	opts := lsp.Options{
		MaxLookahead: cfg.MaxLookahead,
		ReportUnused: cfg.ReportUnused,
	}
	switch {
	case !*noWorkspace:
		// Modules below the search paths resolve '@module' references of open files
		ws, err := workspace.Load(context.Background(), cfg)
		if err != nil {
			log.Println("Error loading workspace:", err)
			os.Exit(1)
		}
		opts.Workspace = ws
		opts.Types = ws.Types()
	case cfg.Catalog != "":
		catalog, err := types.LoadCatalog(cfg.Catalog)
		if err != nil {
			log.Println("Error loading type catalog:", err)
			os.Exit(1)
		}
		opts.Types = types.NewCache(catalog)
	}

	handler := lsp.NewHandler(opts)

	// debug=false: glsp's own protocol tracing stays off
	s := server.NewServer(handler.ProtocolHandler(), lsName, false)

	log.Println("Starting MWE2 LSP server...")
	if err := s.RunStdio(); err != nil {
		log.Println("Error starting MWE2 LSP server:", err)
		os.Exit(1)
	}
}
