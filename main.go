package main

import (
	"github.com/inspirehep/harvestingkit/cmd"

	// Register format plugins
	_ "github.com/inspirehep/harvestingkit/format/iso2709"
	_ "github.com/inspirehep/harvestingkit/format/marcjson"
	_ "github.com/inspirehep/harvestingkit/format/marcxml"
	_ "github.com/inspirehep/harvestingkit/format/pos"
)

func main() {
	cmd.Execute()
}
