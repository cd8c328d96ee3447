// Package composer is a rich-text composition engine for host editors.
//
// A Model owns one formatted document and the selection in it. Hosts
// send it commands (typing, deleting, splitting blocks, toggling
// formats) and render what comes back: every command returns an Update
// holding the new content as HTML, the state of the formatting menu,
// and any actions that need data from the host before they can finish.
//
// All offsets are UTF-16 code units over the flattened document text,
// in which each block boundary counts as a single unit.
//
// Basic usage:
//
//	m := composer.New()
//	m.ReplaceText("Hello")
//	m.Select(0, 5)
//	u, err := m.Bold()
//	if err != nil {
//	    return err
//	}
//	html := u.TextUpdate().(composer.ReplaceAll).HTML // "<strong>Hello</strong>"
//
// Commands that need the host, such as SetLink, return an action in
// Update.Actions. The host answers through ActionResponse; answering an
// action that has since been invalidated does nothing.
//
// A Model is not safe for concurrent use.
package composer
