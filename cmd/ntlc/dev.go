package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ntl-lang/ntlc/driver"
	"github.com/spf13/cobra"
)

func newDevCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "dev [DIR]",
		Short: "recursively compile .ntl files in DIR, serve each over HTTP, recompile on change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runDevServer(dir, flags)
		},
	}
}

type devServer struct {
	mu    sync.RWMutex
	dir   string
	cache driver.Cache
	opts  driver.Options
}

func (s *devServer) compile(relPath string) (*driver.Result, error) {
	return s.cache.CompileFile(filepath.Join(s.dir, relPath), s.opts)
}

func (s *devServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rel := strings.TrimPrefix(r.URL.Path, "/")
	rel = strings.TrimSuffix(rel, ".js") + ".ntl"
	if rel == ".ntl" {
		rel = "main.ntl"
	}
	result, err := s.compile(rel)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if !result.Success {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		for _, d := range result.Errors {
			fmt.Fprintln(w, d.Error())
		}
		return
	}
	w.Header().Set("Content-Type", "application/javascript")
	w.Write([]byte(result.Code))
}

func runDevServer(dir string, flags *globalFlags) error {
	srv := &devServer{dir: dir, opts: driverOptions(flags)}
	addr := fmt.Sprintf(":%d", flags.port)
	fmt.Fprintf(os.Stderr, "serving %s on http://localhost%s (each .ntl file as its compiled .js)\n", dir, addr)
	return http.ListenAndServe(addr, srv)
}
