// Command olectl inspects the OLE property sets of compound documents.
package main

func main() {
	execute()
}
