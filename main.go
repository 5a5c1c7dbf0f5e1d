package main

import "github.com/thalesaraujo16/pomodoro-teste/cmd"

func main() {
	cmd.Execute()
}
