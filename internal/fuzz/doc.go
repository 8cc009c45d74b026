// Package fuzztests houses Go fuzz harnesses for the front end
// (source -> lexer -> parser -> evaluator). They guard against panics and
// hangs on arbitrary input and check the span invariants of every token.
//
// Назначение: загружать байты в FileSet и прогонять их через лексер и парсер
// выражений.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
