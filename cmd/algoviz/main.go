// Command algoviz plays, exports and serves deterministic algorithm animations.
package main

func main() {
	Execute()
}
