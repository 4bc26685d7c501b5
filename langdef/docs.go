/*
Package langdef converts textual grammar description to grammar.Grammar structure.

Grammar is described using Go-style EBNF as parsed by golang.org/x/exp/ebnf:
*/
//  Production  = name "=" [ Expression ] "." .
//  Expression  = Alternative { "|" Alternative } .
//  Alternative = Term { Term } .
//  Term        = name | token [ "…" token ] | Group | Option | Repetition .
//  Group       = "(" Expression ")" .
//  Option      = "[" Expression "]" .
//  Repetition  = "{" Expression "}" .
/*
Tokens are Go string literals (interpreted or raw). Range "a" … "z" matches a single
character from the range. Comments are Go comments.

Productions with names starting with upper-case letter are syntactic: whitespace
is skipped before each element of their sequences and repetitions. Productions with
other names are lexical: they never skip whitespace, may not refer to syntactic
productions, and become terminal nodes, so a parse error inside a lexical production
is reported as a failure of the whole production.

Every production is registered in grammar symbol table under its own name,
references to productions are resolved once the grammar is built.

The first production (in source order) is the start one unless Start option is used.
Every production must be reachable from the start production.

Example:
*/
//  Assignment = ident "=" number { "," number } .
//  ident      = letter { letter | digit } .
//  number     = digit { digit } .
//  letter     = "a" … "z" | "A" … "Z" | "_" .
//  digit      = "0" … "9" .
package langdef
