// Command points_web_viewer serves an on-disk octree over the thin
// HTTP surface described in §6: GET /visible_nodes and POST
// /nodes_data. Its flag contract mirrors the original's
// points_web_viewer.rs exactly: a required DIR positional plus
// port/ip/cache_items, each with the same defaults.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/alecthomas/kong"
	"github.com/hauke96/sigolo/v2"
)

var cli struct {
	Dir        string `help:"The octree directory to serve." arg:"" name:"DIR" type:"existingdir"`
	Port       string `help:"Port to listen on." default:"5433"`
	IP         string `help:"IP string." default:"127.0.0.1"`
	CacheItems int    `help:"Number of node-data blobs to keep cached." default:"100"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("points_web_viewer"),
		kong.Description("Visualizing points"),
	)

	state, err := newAppState(cli.Dir, cli.CacheItems)
	if err != nil {
		sigolo.Errorf("init app state: %v", err)
		os.Exit(1)
	}

	router := newRouter(state)
	addr := fmt.Sprintf("%s:%s", cli.IP, cli.Port)
	sigolo.Infof("Starting http server: %s", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		sigolo.Errorf("server stopped: %v", err)
		os.Exit(1)
	}
}
