// Command pciidsctl resolves PCI vendor, device, subsystem and class ids
// against a pci.ids database.
package main

func main() {
	execute()
}
