// Package binder fills request structs for handler.Wrap.
//
// BindJSON decodes JSON bodies, BindSignals decodes datastar signals and Path
// copies route parameters into fields tagged `path:"name"`. A binder returning ErrBinderNotApplicable is skipped.
package binder
