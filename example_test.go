package cosched_test

import (
	"errors"
	"fmt"

	"github.com/webriots/cosched"
)

func Example() {
	rt := cosched.New()

	worker := func(arg any) {
		name := arg.(string)
		for i := 1; i <= 2; i++ {
			fmt.Println(name, i)
			rt.Yield()
		}
	}

	a, _ := rt.Start("a", worker, "a")
	b, _ := rt.Start("b", worker, "b")
	_ = rt.Wait(a)
	_ = rt.Wait(b)
	fmt.Println("done")

	// Output:
	// a 1
	// b 1
	// a 2
	// b 2
	// done
}

func ExampleRuntime_Start_capacity() {
	rt := cosched.New(cosched.WithCapacity(2))

	_, err := rt.Start("one", func(any) {}, nil)
	fmt.Println(err)

	_, err = rt.Start("two", func(any) {}, nil)
	fmt.Println(errors.Is(err, cosched.ErrCapacity))

	// Output:
	// <nil>
	// true
}

func ExampleRuntime_Detach() {
	rt := cosched.New()

	h, _ := rt.Start("background", func(any) {
		rt.Yield()
		fmt.Println("background finished")
	}, nil)
	_ = rt.Detach(h)

	for rt.Len() > 1 {
		rt.Yield()
	}
	fmt.Println("registered:", rt.Len())

	// Output:
	// background finished
	// registered: 1
}
