package main

import "github.com/ForgeBytez-Official/ZenFlowz/cmd"

func main() {
	cmd.Execute()
}
