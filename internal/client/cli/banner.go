package cli

import (
	"fmt"
	"io"

	"github.com/common-nighthawk/go-figure"
)

const bannerFont = "cybermedium"

func printBanner(w io.Writer, appName string) {
	fmt.Fprintln(w, figure.NewFigure(appName, bannerFont, false).String())
}
