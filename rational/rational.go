// Package rational implements exact fractions for deriving clock ratios
// without floating point drift.
package rational

import "fmt"

// ArithmeticError is the panic value for a zero denominator.
type ArithmeticError struct {
	Op string
}

func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("rational: division by zero in %s", e.Op)
}

// Rational is a fraction kept in lowest terms with a positive denominator.
// The zero value is 0/1.
type Rational struct {
	num int64
	den int64
}

// New returns num/den reduced. A zero den panics with *ArithmeticError.
func New(num, den int64) Rational {
	if den == 0 {
		panic(&ArithmeticError{Op: "New"})
	}
	return normalise(num, den)
}

// Int returns n/1.
func Int(n int64) Rational {
	return Rational{num: n, den: 1}
}

func normalise(num, den int64) Rational {
	if den < 0 {
		num, den = -num, -den
	}
	g := gcd(abs(num), den)
	if g > 1 {
		num /= g
		den /= g
	}
	return Rational{num: num, den: den}
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// Num returns the numerator.
func (r Rational) Num() int64 {
	return r.num
}

// Den returns the denominator, which is always positive.
func (r Rational) Den() int64 {
	if r.den == 0 {
		return 1
	}
	return r.den
}

func (r Rational) Add(o Rational) Rational {
	g := gcd(r.Den(), o.Den())
	d := r.Den() / g
	return normalise(r.num*(o.Den()/g)+o.num*d, d*o.Den())
}

func (r Rational) Sub(o Rational) Rational {
	return r.Add(Rational{num: -o.num, den: o.Den()})
}

func (r Rational) Mul(o Rational) Rational {
	// cross-reduce first to keep the intermediate products small
	g1 := gcd(abs(r.num), o.Den())
	g2 := gcd(abs(o.num), r.Den())
	if g1 == 0 {
		g1 = 1
	}
	if g2 == 0 {
		g2 = 1
	}
	return normalise((r.num/g1)*(o.num/g2), (r.Den()/g2)*(o.Den()/g1))
}

// Div returns r/o. Dividing by zero panics with *ArithmeticError.
func (r Rational) Div(o Rational) Rational {
	if o.num == 0 {
		panic(&ArithmeticError{Op: "Div"})
	}
	return r.Mul(normalise(o.Den(), o.num))
}

// Cmp returns -1, 0 or +1 depending on whether r is less than, equal to or
// greater than o.
func (r Rational) Cmp(o Rational) int {
	d := r.Sub(o)
	switch {
	case d.num < 0:
		return -1
	case d.num > 0:
		return 1
	}
	return 0
}

// Floor returns the largest integer not greater than r.
func (r Rational) Floor() int64 {
	q := r.num / r.Den()
	if r.num%r.Den() != 0 && r.num < 0 {
		q--
	}
	return q
}

// Float64 is the only lossy conversion.
func (r Rational) Float64() float64 {
	return float64(r.num) / float64(r.Den())
}

func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.num, r.Den())
}
