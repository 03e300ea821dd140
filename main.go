package main

import "petmatch-backend/cmd"

func main() {
	cmd.Run()
}
