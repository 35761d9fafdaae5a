package main

import "github.com/JoeyZhen/Library-BMS/cmd"

func main() {
	cmd.Execute()
}
