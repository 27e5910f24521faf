package main

import (
	"github.com/flarebyte/papyrus/cmd/internal/cmdutil"
	"github.com/flarebyte/papyrus/cmd/qrgen/root"
)

func main() { cmdutil.Main(root.Execute) }
