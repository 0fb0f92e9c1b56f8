package main

import (
	"os"
	"reflect"
	"strings"

	musgen "github.com/mus-format/musgen-go/mus"
	genops "github.com/mus-format/musgen-go/options/generate"
	structops "github.com/mus-format/musgen-go/options/struct"
	typeops "github.com/mus-format/musgen-go/options/type"
	"github.com/poiesic/servit/core"
)

func check(err error) {
	if err != nil {
		panic(err)
	}
}

func main() {
	cwd, err := os.Getwd()
	check(err)

	// go:generate runs inside core; generation paths assume the module root
	if strings.HasSuffix(cwd, "core") {
		check(os.Chdir(".."))
	}

	g, err := musgen.NewCodeGenerator(
		genops.WithPkgPath("github.com/poiesic/servit/core"),
	)
	check(err)

	g.AddDefinedType(reflect.TypeFor[core.ID]())

	// Timestamps travel as Unix micros
	micro := typeops.WithTimeUnit(typeops.Micro)
	check(g.AddStruct(reflect.TypeFor[core.ServiceRecord](),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(micro),
		structops.WithField(micro)))

	check(g.AddStruct(reflect.TypeFor[core.Checkpoint](),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(micro)))

	bs, err := g.Generate()
	check(err)

	check(os.WriteFile("./core/records_mus.gen.go", bs, 0o644))
}
