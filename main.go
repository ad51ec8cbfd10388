package main

import (
	"fmt"
	"os"

	"fintouch/assistant/cmd/batch"
	"fintouch/assistant/cmd/categorize"
	"fintouch/assistant/cmd/icons"
	"fintouch/assistant/cmd/root"
	"fintouch/assistant/cmd/serve"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(serve.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(icons.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
