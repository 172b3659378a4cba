// Package fuzztests houses Go fuzz harnesses for the instrumentation
// pipeline (source -> lexer -> parser -> fold -> rewrite). They guard against
// panics, hangs and broken invariants on arbitrary inputs.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
