package main

import "github.com/RakanDouli/souq-client/cmd"

func main() {
	cmd.Execute()
}
