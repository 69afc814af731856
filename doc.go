// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package zudd defines a node manager for decision diagrams, with a focus on
Zero-suppressed Decision Diagrams (ZDD), a data structure used to efficiently
represent families of sets over a fixed set of variables.

Basics

Each Manager has a fixed number of variables, Varnum, declared when it is
created (using the function New). Each variable is placed at a level in the
interval [0..Varnum); by default variable i is at level i, but a different
order can be given with the option WithOrder. Terminals are at level Varnum.

Nodes are referenced with an Edge, a small integer made of the index of the
node in the arena and a complement bit. The manager keeps one unique table
(subtable) per level, so that two live nodes never have the same level and
children. As a consequence, two edges are equal if and only if they denote the
same family. New nodes are obtained with MakeBranch, which applies the
reduction rule of the manager: a ZDD node whose then-child is Zero is never
created. Managers created with WithKind(BDD) use the rule of Binary Decision
Diagrams with complemented else-edges instead.

Counting

Count, CountDouble and CountBig return the number of paths to One, that is the
number of sets in a ZDD. Each call uses a transient memo table that can be
capped with the option Memolimit; reaching the cap is reported as an
out-of-memory condition and the memo is always released.

Numbering sessions

A serializer needs a dense numbering of the nodes of a diagram. BeginNumbering
detaches the nodes reachable from a set of roots, numbers them in post-order
and holds the manager until End puts every node back in its subtable. The
method Emit wraps a session and sends each node to an Emitter; the printers
PrintDot, PrintAut and PrintNodes are built this way.

Memory management

Nodes carry a reference count, made of the number of parents plus the number
of external references taken with Ref. GC reclaims the nodes with a count of
zero; it is never called implicitly, so results remain valid until the next
explicit collection.
*/
package zudd
