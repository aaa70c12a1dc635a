// Package scene defines the named shape registry that scripts build and
// queries run against. A scene is a flat set of shapes, each identified by
// a content hash and optionally by a user-assigned name.
package scene
