// Package dom provides the in-memory node tree that list components attach
// to.
//
// The engine in pkg/list never inspects node contents; it only appends and
// removes children. Node is therefore deliberately small: a tag, a flat
// attribute map, a class set, and ordered children. The same tree doubles as
// the server-side render target: RenderHTML serializes any subtree to HTML
// for SSR and for structural assertions in tests.
//
// # Building trees
//
//	card := dom.NewElement("div", dom.Class("card"))
//	card.AppendChild(dom.NewText("hello"))
//	root.AppendChild(card)
//
// Nodes are not safe for concurrent mutation; all structural edits must
// happen on the owning update goroutine.
package dom
