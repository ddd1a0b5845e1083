package main

import "specy-indexer/cmd"

func main() {
	cmd.Execute()
}
