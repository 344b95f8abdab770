// Package document assembles the decoded low-level structures into the
// final document model.
//
// Assembly flows strictly bottom-up: the file header locates the piece
// table, style sheet, bin tables, and position lists; the paragraph/run
// builder reconciles piece boundaries with property-run boundaries; and
// the section, table, and sub-document assemblers partition the built
// paragraphs into the final model. The whole decode is a synchronous,
// in-memory transform over immutable input buffers.
package document
