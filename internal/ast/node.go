package ast

type Node interface {
	NodePos() Position
	NodeEndPos() Position
	NodeType() NodeType
	String() string

	// Metadata support for tooling (node ids, parent index, source ranges)
	GetMetadata() *Metadata
	SetMetadata(*Metadata)
}

func (m *Module) NodePos() Position    { return m.Pos }
func (m *Module) NodeEndPos() Position { return m.EndPos }
func (*Module) NodeType() NodeType     { return MODULE }

func (i *Ident) NodePos() Position    { return i.Pos }
func (i *Ident) NodeEndPos() Position { return i.EndPos }
func (*Ident) NodeType() NodeType     { return IDENT }

func (f *FQN) NodePos() Position    { return f.Pos }
func (f *FQN) NodeEndPos() Position { return f.EndPos }
func (*FQN) NodeType() NodeType     { return FQN_NAME }

func (i *Import) NodePos() Position    { return i.Pos }
func (i *Import) NodeEndPos() Position { return i.EndPos }
func (*Import) NodeType() NodeType     { return IMPORT }

func (dp *DeclaredProperty) NodePos() Position    { return dp.Pos }
func (dp *DeclaredProperty) NodeEndPos() Position { return dp.EndPos }
func (*DeclaredProperty) NodeType() NodeType      { return DECLARED_PROPERTY }

func (c *Component) NodePos() Position    { return c.Pos }
func (c *Component) NodeEndPos() Position { return c.EndPos }
func (*Component) NodeType() NodeType     { return COMPONENT }

func (a *Assignment) NodePos() Position    { return a.Pos }
func (a *Assignment) NodeEndPos() Position { return a.EndPos }
func (*Assignment) NodeType() NodeType     { return ASSIGNMENT }

func (sl *StringLiteral) NodePos() Position    { return sl.Pos }
func (sl *StringLiteral) NodeEndPos() Position { return sl.EndPos }
func (*StringLiteral) NodeType() NodeType      { return STRING_LITERAL }

func (cs *CompoundString) NodePos() Position    { return cs.Pos }
func (cs *CompoundString) NodeEndPos() Position { return cs.EndPos }
func (*CompoundString) NodeType() NodeType      { return COMPOUND_STRING }

func (pr *PropertyReference) NodePos() Position    { return pr.Pos }
func (pr *PropertyReference) NodeEndPos() Position { return pr.EndPos }
func (*PropertyReference) NodeType() NodeType      { return PROPERTY_REFERENCE }

func (ps *PlainString) NodePos() Position    { return ps.Pos }
func (ps *PlainString) NodeEndPos() Position { return ps.EndPos }
func (*PlainString) NodeType() NodeType      { return PLAIN_STRING }

func (bl *BooleanLiteral) NodePos() Position    { return bl.Pos }
func (bl *BooleanLiteral) NodeEndPos() Position { return bl.EndPos }
func (*BooleanLiteral) NodeType() NodeType      { return BOOLEAN_LITERAL }

func (r *Reference) NodePos() Position    { return r.Pos }
func (r *Reference) NodeEndPos() Position { return r.EndPos }
func (*Reference) NodeType() NodeType     { return REFERENCE }

func (bv *BadValue) NodePos() Position    { return bv.Bad.Pos }
func (bv *BadValue) NodeEndPos() Position { return bv.Bad.EndPos }
func (*BadValue) NodeType() NodeType      { return BAD_VALUE }

func (c *Comment) NodePos() Position    { return c.Pos }
func (c *Comment) NodeEndPos() Position { return c.EndPos }
func (*Comment) NodeType() NodeType     { return COMMENT }

// Metadata accessors

func (m *Module) GetMetadata() *Metadata   { return m.metadata }
func (m *Module) SetMetadata(md *Metadata) { m.metadata = md }

func (i *Ident) GetMetadata() *Metadata   { return i.metadata }
func (i *Ident) SetMetadata(md *Metadata) { i.metadata = md }

func (f *FQN) GetMetadata() *Metadata   { return f.metadata }
func (f *FQN) SetMetadata(md *Metadata) { f.metadata = md }

func (i *Import) GetMetadata() *Metadata   { return i.metadata }
func (i *Import) SetMetadata(md *Metadata) { i.metadata = md }

func (dp *DeclaredProperty) GetMetadata() *Metadata   { return dp.metadata }
func (dp *DeclaredProperty) SetMetadata(md *Metadata) { dp.metadata = md }

func (c *Component) GetMetadata() *Metadata   { return c.metadata }
func (c *Component) SetMetadata(md *Metadata) { c.metadata = md }

func (a *Assignment) GetMetadata() *Metadata   { return a.metadata }
func (a *Assignment) SetMetadata(md *Metadata) { a.metadata = md }

func (sl *StringLiteral) GetMetadata() *Metadata   { return sl.metadata }
func (sl *StringLiteral) SetMetadata(md *Metadata) { sl.metadata = md }

func (cs *CompoundString) GetMetadata() *Metadata   { return cs.metadata }
func (cs *CompoundString) SetMetadata(md *Metadata) { cs.metadata = md }

func (pr *PropertyReference) GetMetadata() *Metadata   { return pr.metadata }
func (pr *PropertyReference) SetMetadata(md *Metadata) { pr.metadata = md }

func (ps *PlainString) GetMetadata() *Metadata   { return ps.metadata }
func (ps *PlainString) SetMetadata(md *Metadata) { ps.metadata = md }

func (bl *BooleanLiteral) GetMetadata() *Metadata   { return bl.metadata }
func (bl *BooleanLiteral) SetMetadata(md *Metadata) { bl.metadata = md }

func (r *Reference) GetMetadata() *Metadata   { return r.metadata }
func (r *Reference) SetMetadata(md *Metadata) { r.metadata = md }

func (bv *BadValue) GetMetadata() *Metadata   { return bv.metadata }
func (bv *BadValue) SetMetadata(md *Metadata) { bv.metadata = md }

func (c *Comment) GetMetadata() *Metadata   { return c.metadata }
func (c *Comment) SetMetadata(md *Metadata) { c.metadata = md }
