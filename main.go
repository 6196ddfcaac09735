package main

import "github.com/zhouqcn/legalinfocollector/cmd"

func main() {
	cmd.Execute()
}
