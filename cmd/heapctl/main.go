// Command heapctl creates and inspects fixed-capacity heaps.
package main

func main() {
	execute()
}
