package main

import (
	"oss.terrastruct.com/tikzed/lib/xmain"
	"oss.terrastruct.com/tikzed/tikzcli"
)

func main() {
	xmain.Main(tikzcli.Run)
}
