/*
Copyright © 2026 Paulo Suderio
*/
package main

import "github.com/suderio/pilgrim/cmd"

func main() {
	cmd.Execute()
}
