// Package scope implements named, composable scope families.
//
// A family is a typed slot identified by name. Providing a family over a parent
// bag yields a new bag in which that name resolves to the provided entry while
// every other name still resolves to whatever the parent held. Bags are
// persistent linked lists, so providers never mutate what they inherit and the
// nearest provider for a name always wins.
//
// Independent packages each declare their own families and thread a single bag
// through their constructors. A Composer gathers the entries of several
// families from one bag onto another, which lets a component that depends on
// more than one package hand all of their scopes down in one value.
package scope
