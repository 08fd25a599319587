// Package menu builds keyboard and pointer driven popup menus out of the
// scope, presence, controllable, submenu and keys packages.
//
// A Tree owns the open state, the submenu stack and the key scopes of one
// menu. Contents, items, groups, choices and submenus are created by
// threading the tree's scope bag through constructor calls:
//
//	tree := menu.NewTree(menu.TreeOptions{})
//	root, _ := menu.NewContent(tree.Scope(), menu.ContentOptions{})
//	root.AddItem(menu.ItemOptions{Label: "Copy"})
//	sub, _ := root.AddSubmenu(menu.SubmenuOptions{Label: "Share"})
//	shared, _ := menu.NewContent(sub.Scope(), menu.ContentOptions{})
//	shared.AddItem(menu.ItemOptions{Label: "Mail"})
//
// The renderer feeds key presses to Tree.HandleKey, pointer activity to
// PointerMove, PointerDown and Click, and every message to Tree.Update so
// deferred work such as submenu entrance and hover delays completes.
package menu
