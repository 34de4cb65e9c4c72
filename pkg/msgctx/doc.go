// Package msgctx provides MessageContext, the hierarchical key/value store
// shared by condition evaluation and message-template parameter binding.
//
// A MessageContext keeps a local map and an optional parent. Lookups consult
// the local map first, then an optional Resolver callback for values that are
// computed on demand (the current field, the value under test, the group
// name), and finally the parent chain. Every lookup result is returned as a
// tagged Value: slices and arrays are decorated into ordered sequences so
// callers never need to inspect raw types.
//
// # Usage
//
//	root := msgctx.New(msgctx.WithValues(map[string]any{"formName": "signup"}))
//	child := msgctx.New(msgctx.WithParent(root))
//	child.Put("allMessages", []string{})
//	child.Get("formName").String() // "signup"
//
// # Removal semantics
//
// Put(key, nil) removes key from the local map and forwards Put(key, nil) to
// the parent, so a removal at any level clears the key along the whole chain
// above it. Contexts are owned by a single evaluation and are not safe for
// concurrent use.
package msgctx
