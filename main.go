package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"rkeller/pennyflow/cmd/accounts"
	"rkeller/pennyflow/cmd/categories"
	"rkeller/pennyflow/cmd/imports"
	"rkeller/pennyflow/cmd/parse"
	"rkeller/pennyflow/cmd/root"
)

func init() {
	loadEnvSilently()

	root.Init()

	root.Cmd.AddCommand(parse.Cmd)
	root.Cmd.AddCommand(imports.Cmd)
	root.Cmd.AddCommand(imports.ListCmd)
	root.Cmd.AddCommand(accounts.Cmd)
	root.Cmd.AddCommand(categories.Cmd)
}

// loadEnvSilently loads a .env file when one exists, before any logging is
// configured. Values already set in the environment win.
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
