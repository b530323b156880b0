package main

import (
	"fmt"
	"os"

	"github.com/owaspcebu/ctf-platform/internal/cli"
)

// @title                       OWASP Cebu CTF API
// @version                     1.0
// @description                 Challenge board, flag scoring and leaderboards for the OWASP Cebu CTF.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ctfd:", err)
		os.Exit(1)
	}
}
