package main

import "github.com/Layr-Labs/rewards-claimer/cmd"

func main() {
	cmd.Execute()
}
