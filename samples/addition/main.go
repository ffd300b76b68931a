package main

import (
	_ "embed"
	"fmt"
	"log"

	"github.com/sarchlab/slang/api"
	"github.com/sarchlab/slang/core"
	"github.com/tebeka/atexit"
)

//go:embed addition.yaml
var additionProgram []byte

func addition(driver api.Driver, p *core.Program) {
	for degree := 0; degree <= 3; degree++ {
		resp, err := driver.Run(api.RunRequest{
			Program: p,
			Degree:  degree,
			Inputs:  []string{"3", "4"},
		})
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("degree %d: y = %d, %d cycles, %d credits\n",
			resp.Degree, resp.Result, resp.Cycles, resp.Credits)
	}

	view, err := driver.View(api.ViewRequest{Program: p, Degree: 3})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(view.Table)
}

func main() {
	p, reg, err := core.LoadProgram(additionProgram)
	if err != nil {
		log.Fatal(err)
	}

	driver := api.NewDriverBuilder().
		WithRegistry(reg).
		Build()

	fmt.Println(core.RenderProgram(p))

	result, err := core.NewRunner(reg).Run(p, []uint64{3, 4})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(core.RenderVariables(result))

	addition(driver, p)

	atexit.Exit(0)
}
