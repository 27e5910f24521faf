package main

import (
	"github.com/flarebyte/papyrus/cmd/internal/cmdutil"
	"github.com/flarebyte/papyrus/cmd/wikitable/root"
)

func main() { cmdutil.Main(root.Execute) }
