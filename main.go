package main

import "github.com/KaramelBytes/review-digest/cmd"

func main() {
	cmd.Execute()
}
