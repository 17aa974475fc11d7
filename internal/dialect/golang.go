package dialect

import (
	"bytes"
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/oyin-bo/lexigen/pkg/errors"
)

// buildGo renders the Go dialect with jen rather than a text template, so
// the output is gofmt-clean and literals are quoted by the generator.
func buildGo(d *Dialect, in *input) (string, error) {
	f := jen.NewFile("main")
	f.HeaderComment("Code generated by lexigen. DO NOT EDIT.")

	f.Var().Id("wordList").Op("=").Index().String().ValuesFunc(func(g *jen.Group) {
		for _, w := range in.Words {
			g.Lit(w)
		}
	})

	var setup []jen.Code
	if in.Chunked {
		for i, c := range in.Chunks {
			items := c
			f.Var().Id(partName(i)).Op("=").Index().String().ValuesFunc(func(g *jen.Group) {
				for _, w := range items {
					g.Lit(w)
				}
			})
		}
		setup = append(setup, jen.Var().Id("encodedWords").Index().String())
		for i := range in.Chunks {
			setup = append(setup, jen.Id("encodedWords").Op("=").Append(jen.Id("encodedWords"), jen.Id(partName(i)).Op("...")))
		}
	} else {
		setup = append(setup, jen.Id("encodedWords").Op(":=").Index().String().ValuesFunc(func(g *jen.Group) {
			for _, w := range in.Encoded {
				g.Lit(w)
			}
		}))
	}

	f.Func().Id("decode").Params(
		jen.Id("encoded").Index().String(),
		jen.Id("table").Index().String(),
	).Params(jen.Index().Byte(), jen.Error()).Block(
		jen.Id("index").Op(":=").Make(jen.Map(jen.String()).Byte(), jen.Len(jen.Id("table"))),
		jen.For(jen.List(jen.Id("i"), jen.Id("w")).Op(":=").Range().Id("table")).Block(
			jen.Id("index").Index(jen.Id("w")).Op("=").Byte().Call(jen.Id("i")),
		),
		jen.Line(),
		jen.Id("out").Op(":=").Make(jen.Index().Byte(), jen.Lit(0), jen.Len(jen.Id("encoded"))),
		jen.For(jen.List(jen.Id("i"), jen.Id("w")).Op(":=").Range().Id("encoded")).Block(
			jen.List(jen.Id("b"), jen.Id("ok")).Op(":=").Id("index").Index(jen.Id("w")),
			jen.If(jen.Op("!").Id("ok")).Block(
				jen.Return(jen.Nil(), jen.Qual("fmt", "Errorf").Call(
					jen.Lit("word at position %d is not in the table"), jen.Id("i"))),
			),
			jen.Id("out").Op("=").Append(jen.Id("out"), jen.Id("b")),
		),
		jen.Return(jen.Id("out"), jen.Nil()),
	)

	body := append(setup,
		jen.Line(),
		jen.List(jen.Id("payload"), jen.Err()).Op(":=").Id("decode").Call(jen.Id("encodedWords"), jen.Id("wordList")),
		jen.If(jen.Err().Op("!=").Nil()).Block(
			jen.Qual("fmt", "Fprintln").Call(jen.Qual("os", "Stderr"), jen.Lit("[-]"), jen.Err()),
			jen.Qual("os", "Exit").Call(jen.Lit(1)),
		),
		jen.Qual("fmt", "Fprintf").Call(jen.Qual("os", "Stderr"), jen.Lit("[+] Decoded %d bytes\n"), jen.Len(jen.Id("payload"))),
		jen.Line(),
		jen.If(
			jen.List(jen.Id("_"), jen.Err()).Op(":=").Qual("os", "Stdout").Dot("Write").Call(jen.Id("payload")),
			jen.Err().Op("!=").Nil(),
		).Block(
			jen.Qual("fmt", "Fprintln").Call(jen.Qual("os", "Stderr"), jen.Lit("[-]"), jen.Err()),
			jen.Qual("os", "Exit").Call(jen.Lit(1)),
		),
	)
	f.Func().Id("main").Params().Block(body...)

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return "", errors.Wrap(err, errors.InternalError, fmt.Sprintf("cannot render %s source", d.Name))
	}
	return buf.String(), nil
}

func partName(i int) string {
	return fmt.Sprintf("encodedWordsPart%d", i)
}
