package main

import "github.com/pradiptamal/crm-management/cmd"

func main() {
	cmd.Execute()
}
