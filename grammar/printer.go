package grammar

// String renders the file in canonical form, identical to what the
// hand-written parser's AST prints for the same source.
func (f *File) String() string {
	return ToAST(f).String()
}
