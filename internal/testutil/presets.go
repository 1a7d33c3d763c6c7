package testutil

// WithSingleUnit is the smallest valid shape: one unit holding one token.
func (b *Builder) WithSingleUnit() *Builder {
	return b.
		Named("single").
		WithSource("x = 1\n").
		WithDerived("let x = 1;\n").
		Open("1:1").Token("1:1-1:6").Close("1:11").
		Check("1:2-1:3", "1:1-1:11")
}

// WithSplicedChunks mirrors the built-in demo: two source chunks spliced
// into separate derived units, with a generated line between them that
// belongs to neither.
//
//	open  1:1                      root
//	  open  1:1  token 1:8-1:14    first chunk  → 1:1-1:15
//	  close 1:15
//	  gap   0                      print(", ")
//	  open  3:1  token 2:8-2:14    second chunk → 3:1-3:15
//	  close 3:15
//	close 3:15
func (b *Builder) WithSplicedChunks() *Builder {
	return b.
		Named("chunks").
		WithSource("greet: \"hello\"\npart:  \"world\"\n").
		WithDerived("print(\"hello\");\nprint(\", \");\nprint(\"world\");\n").
		Open("1:1").
		Open("1:1").Token("1:8-1:14").Close("1:15").
		Gap(0).
		Open("3:1").Token("2:8-2:14").Close("3:15").
		Close("3:15").
		Check("1:8-2:14", "1:1-1:15", "3:1-3:15").
		Check("1:9-1:10", "1:1-1:15").
		CheckBack("3:2-3:9", "2:8-2:14")
}

// WithNestedUnits builds three nesting levels so enclosing-unit selection
// has a distinct answer per anchor spread.
//
//	open  1:1                      root
//	  open  1:5                    inner pair
//	    open  1:9  token sum       → 1:9-1:12
//	    close 1:12
//	    open  2:1  token mul       → 2:1-2:8
//	    close 2:8
//	  close 2:9
//	  open  3:1  token div         → 3:1-3:9
//	  close 3:9
//	close 3:10
func (b *Builder) WithNestedUnits() *Builder {
	return b.
		Named("nested").
		WithSource("sum\nmul\ndiv\n").
		WithDerived("out(in( sum)\n(mul)  )\n(divide))\n").
		Open("1:1").
		Open("1:5").
		Open("1:9").Token("1:1-1:4").Close("1:12").
		Open("2:1").Token("2:1-2:4").Close("2:8").
		Close("2:9").
		Open("3:1").Token("3:1-3:4").Close("3:9").
		Close("3:10").
		Check("1:2-1:3", "1:9-1:12").
		Check("1:2-2:3", "1:5-2:9").
		Check("1:2-3:3", "1:1-3:10").
		Check("3:2-3:3", "3:1-3:9").
		CheckBack("1:10-1:11", "1:1-1:4").
		CheckBack("1:10-2:2", "1:1-1:4", "2:1-2:4")
}
