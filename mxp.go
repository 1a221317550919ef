// Package mxp parses and interprets MXP tags embedded in a MUD server's text
// stream, turning SEND spans into clickable links.
//
// # Tags
//
// A SEND span wraps text the player can click:
//
//	<SEND "tell Zugg " PROMPT>Zugg</SEND>
//	<SEND>north</SEND>
//	<SEND href="say I am &charName;">me</SEND>
//
// The href is either the named attribute or the first positional value. Without
// one, it defaults to &text;, the body of the span. The PROMPT flag selects
// printCmdLine (fill the input line) instead of send (execute at once).
//
// # Basic Usage
//
// Feed a whole document to a session and read the links back:
//
//	sess := mxp.MustNewSession()
//	_ = sess.RegisterEntity("&charName;", "Gandalf")
//	_ = sess.Feed(`Exits: <SEND>north</SEND>`)
//	_ = sess.Close()
//	for _, l := range sess.Recorded().Links() {
//	    fmt.Println(l.Action, l.Hint) // send([[north]]) north
//	}
//
// A stream reader that already extracts tags can call StartTag, Text and EndTag
// directly, or drive a TagHandler by hand:
//
//	ctx := mxp.NewContext(nil)
//	sink := mxp.NewRecordingSink()
//	h := mxp.NewSendTagHandler(nil)
//	start, _ := mxp.NewParser(nil).ParseStartTag(`<SEND PROMPT>`)
//	_ = h.HandleTag(ctx, sink, start)
//	h.HandleContent("north")
//	_ = h.HandleTag(ctx, sink, mxp.NewEndTag("SEND"))
//
// # Error Handling
//
// Nothing in a document is fatal. Malformed tags (ErrParseFailure), tags out
// of sequence (ErrProtocolSequence) and spans left open at Close
// (ErrUnterminatedTag) are logged, counted in Stats and skipped. Unknown
// entities stay in the output verbatim.
//
// # Custom Tag Families
//
// Implement TagHandler and register it by tag name:
//
//	sess, _ := mxp.NewSession(mxp.WithHandler("COLOR", myColorHandler))
package mxp
