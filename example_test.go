package grammatic_test

import (
	"fmt"

	"github.com/ava12/grammatic/langdef"
	"github.com/ava12/grammatic/parser"
	"github.com/ava12/grammatic/tree"
)

func Example() {
	input := `
foo = hello
bar = world
[sec]
baz =
[sec.subsec]
qux = !
`
	grammar := `
Config  = { Section | Pair } .
Section = "[" name "]" .
Pair    = name "=" [ value ] .
name    = letter { letter | "." } .
value   = char { char } .
letter  = "a" … "z" .
char    = "a" … "z" | "!" .
`
	configGrammar, root, e := langdef.ParseString("example grammar", grammar)
	if e != nil {
		fmt.Println(e)
		return
	}

	result := make(map[string]string)
	prefix := ""
	configParser, e := parser.New(configGrammar, root,
		parser.WithInitHook("Section", func(n *tree.Node, _ any) error {
			for _, c := range n.Children() {
				if c != nil && c.Name() == "name" {
					prefix = c.Text() + "."
				}
			}
			return nil
		}),
		parser.WithInitHook("Pair", func(n *tree.Node, _ any) error {
			name, value := "", ""
			for _, c := range n.Children() {
				if c == nil {
					continue
				}
				switch c.Name() {
				case "name":
					name = c.Text()
				case "value":
					value = c.Text()
				}
			}
			result[prefix+name] = value
			return nil
		}),
	)
	if e != nil {
		panic(e)
	}

	_, e = configParser.ParseString(input, parser.EOF())
	if e == nil {
		fmt.Println(result)
	} else {
		fmt.Println(e)
	}

	// Output:
	// map[bar:world foo:hello sec.baz: sec.subsec.qux:!]
}
