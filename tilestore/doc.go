/*
Package tilestore contains a compact, "write-once, read-only" file
format for rasterized cell tables, e.g. the output tables of a batch
fill.

Cells are keyed row-major (by Y, then X) and must be appended in
ascending key order; the Sorter can be used to pre-sort unordered cell
streams.

Data Structure Documentation

Store

A store contains a series of data blocks followed by an index and
a store footer.

	Store layout:
	+---------+---------+---------+-------------+--------------+
	| block 1 |   ...   | block n | block index | store footer |
	+---------+---------+---------+-------------+--------------+

	Block index:
	+---------------------------+--------------------+---------------------------------+--------------------------+--------+
	| last key block 1 (varint) |  offset 1 (varint) | last key block 2 (varint,delta) |  offset 2 (varint,delta) |   ...  |
	+---------------------------+--------------------+---------------------------------+--------------------------+--------+

	Store footer:
	+------------------------+------------------+
	| index offset (8 bytes) |  magic (8 bytes) |
	+------------------------+------------------+

Block

A block is a series of key-value pairs (= entries) followed by the
number of entries and a single-byte compression type indicator. The key
of the first entry is stored as a full uint64 while the keys of all
subsequent entries are delta encoded.

	Block layout:
	+----------------+----------------------+------------------+----------------------+-------+---------------------------+---------------------------+
	| key 1 (varint) | value len 1 (varint) | value 1 (varlen) | key 2 (varint,delta) |  ...  | number of cells (4 bytes) | compression type (1-byte) |
	+----------------+----------------------+------------------+----------------------+-------+---------------------------+---------------------------+
*/
package tilestore
