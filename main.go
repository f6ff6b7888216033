package main

import "github.com/ValentinKolb/hlbridge/cmd"

func main() {
	cmd.Execute()
}
