// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zudd_test

import (
	"fmt"
	"log"
	"os"

	"github.com/dalzilio/zudd"
)

// This example shows the basic usage of the package: create a manager, build
// some families of sets and count them.
func Example_basic() {
	// Create a new ZDD manager with 6 variables and an operation cache of 3 000
	// entries.
	m, err := zudd.New(6, zudd.Nodesize(10000), zudd.Cachesize(3000))
	if err != nil {
		log.Fatal(err)
	}
	// f1 is the family {{2, 3, 5}, {1}, {}}
	f1, _ := m.Family([]int{2, 3, 5}, []int{1}, nil)
	// f2 adds variable 4 to every set of f1
	f2, _ := m.Change(f1, 4)
	// f3 is the union of f1 and f2, minus the sets containing 1
	f3, _ := m.Union(f1, f2)
	f3, _ = m.Subset0(f3, 1)
	fmt.Printf("Number of sets: %d\n", m.Count(f3))
	m.Allsets(f3, func(vars []int) error {
		fmt.Println(vars)
		return nil
	})
	// Output:
	// Number of sets: 4
	// []
	// [4]
	// [2 3 5]
	// [2 3 4 5]
}

// This example builds a node directly with MakeBranch and prints the nodes
// reachable from it, children first.
func Example_makeBranch() {
	m, _ := zudd.New(3)
	x2, _ := m.IthVar(2)
	// both branches lead to x2: the family {{0, 2}, {2}}
	e, _ := m.MakeBranch(0, x2, x2)
	fmt.Println(m.Count(e))
	m.PrintNodes(os.Stdout, e)
	// Output:
	// 2
	// 2      [2] x2 ? 1 : 0
	// 3      [0] x0 ? 2 : 2
	// root 0:3
}
